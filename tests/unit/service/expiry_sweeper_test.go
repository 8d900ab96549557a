package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"setflow/internal/service"
	"setflow/mocks"
)

func TestExpirySweeper_SweepMarksInvitesAndProposals(t *testing.T) {
	inviteRepo := new(mocks.MockInviteRepo)
	proposalRepo := new(mocks.MockProposalRepo)
	sweeper := service.NewExpirySweeper(inviteRepo, proposalRepo, service.ExpirySweeperConfig{})

	inviteRepo.On("MarkExpired", mock.Anything).Return(int64(3), nil)
	proposalRepo.On("MarkExpired", mock.Anything).Return(int64(2), nil)

	sweeper.Sweep(context.Background())

	inviteRepo.AssertExpectations(t)
	proposalRepo.AssertExpectations(t)
}

func TestExpirySweeper_InviteErrorStillSweepsProposals(t *testing.T) {
	inviteRepo := new(mocks.MockInviteRepo)
	proposalRepo := new(mocks.MockProposalRepo)
	sweeper := service.NewExpirySweeper(inviteRepo, proposalRepo, service.ExpirySweeperConfig{})

	inviteRepo.On("MarkExpired", mock.Anything).Return(int64(0), errors.New("connection reset"))
	proposalRepo.On("MarkExpired", mock.Anything).Return(int64(1), nil)

	sweeper.Sweep(context.Background())

	proposalRepo.AssertExpectations(t)
}
