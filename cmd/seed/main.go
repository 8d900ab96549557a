// Command seed provisions a demo organization for local development:
// one org with a master owner, a small team, a few clients, catalog
// services and suppliers. Idempotent on the org slug.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"setflow/internal/config"
	"setflow/internal/domain"
	"setflow/internal/repository/postgres"
)

const (
	demoSlug     = "luma-films"
	demoPassword = "changeme123"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	orgRepo := postgres.NewOrganizationRepo(db)
	memberRepo := postgres.NewMemberRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	catalogRepo := postgres.NewCatalogServiceRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)

	ctx := context.Background()

	if existing, err := orgRepo.GetBySlug(ctx, demoSlug); err == nil {
		log.Printf("org %q already exists (%s); nothing to do", demoSlug, existing.ID)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("checking for existing org: %w", err)
	}

	org := &domain.Organization{
		Name:                "Luma Films",
		Slug:                demoSlug,
		Currency:            "BRL",
		SeatLimit:           10,
		CNPJTaxRatePct:      16.0,
		ProdutoraTaxRatePct: 10.0,
		IsActive:            true,
	}
	if err := orgRepo.Create(ctx, org); err != nil {
		return fmt.Errorf("creating org: %w", err)
	}
	log.Printf("created org %q (%s)", org.Name, org.ID)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	team := []*domain.Member{
		{Email: "ana@lumafilms.com", FullName: "Ana Ribeiro", EffectiveRole: domain.RoleOwner, IsMasterOwner: true},
		{Email: "bruno@lumafilms.com", FullName: "Bruno Costa", EffectiveRole: domain.RoleAdmin},
		{Email: "carla@lumafilms.com", FullName: "Carla Mendes", EffectiveRole: domain.RoleProducer},
		{Email: "diego@lumafilms.com", FullName: "Diego Alves", EffectiveRole: domain.RoleFinance},
	}
	for _, m := range team {
		m.OrgID = org.ID
		m.PasswordHash = string(hash)
		m.IsActive = true
		if err := memberRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("creating member %s: %w", m.Email, err)
		}
		log.Printf("created member %s (%s)", m.Email, m.EffectiveRole)
	}

	org.MasterOwnerProfileID = &team[0].ID
	if err := orgRepo.Update(ctx, org); err != nil {
		return fmt.Errorf("setting master owner: %w", err)
	}

	clients := []*domain.Client{
		{Name: "Marina Duarte", Company: "Duarte Cosmetics", Email: "marina@duarte.com.br", Phone: "+55 11 98765-0001"},
		{Name: "Rafael Pinto", Company: "Pinto Imoveis", Email: "rafael@pintoimoveis.com.br", Phone: "+55 11 98765-0002"},
	}
	for _, c := range clients {
		c.OrgID = org.ID
		if err := clientRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("creating client %s: %w", c.Name, err)
		}
	}
	log.Printf("created %d clients", len(clients))

	services := []*domain.CatalogService{
		{Name: "Shooting day (full crew)", Description: "12h shooting day with standard crew", RateCents: 1_500_000, IsActive: true},
		{Name: "Editing (per minute)", Description: "Offline edit, per finished minute", RateCents: 80_000, IsActive: true},
		{Name: "Color grading", Description: "Full grade, up to 5 min", RateCents: 350_000, IsActive: true},
		{Name: "Sound mix", Description: "Stereo mix and master", RateCents: 250_000, IsActive: true},
	}
	for _, s := range services {
		s.OrgID = org.ID
		if err := catalogRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("creating catalog service %s: %w", s.Name, err)
		}
	}
	log.Printf("created %d catalog services", len(services))

	suppliers := []*domain.Supplier{
		{Name: "Joao Souza", Category: domain.SupplierCategoryCrew, Email: "joao@freelance.com", Phone: "+55 11 98765-0003"},
		{Name: "LocAll Equipamentos", Category: domain.SupplierCategoryEquipment, Email: "contato@locall.com.br"},
		{Name: "Estudio Mirante", Category: domain.SupplierCategoryLocation, Email: "reservas@mirante.com.br"},
	}
	for _, s := range suppliers {
		s.OrgID = org.ID
		if err := supplierRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("creating supplier %s: %w", s.Name, err)
		}
	}
	log.Printf("created %d suppliers", len(suppliers))

	log.Printf("Seed complete. Login: org=%s email=%s password=%s", demoSlug, team[0].Email, demoPassword)
	return nil
}
