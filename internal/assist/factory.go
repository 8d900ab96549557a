package assist

import (
	"fmt"

	"setflow/internal/config"
	"setflow/internal/port"
)

// ProviderFactory is a function that creates an Assistant from a provider config.
type ProviderFactory func(cfg *config.AssistProviderConfig) (port.Assistant, error)

// registry of assist provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an assist provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewAssistant creates an Assistant from a provider config using the registered factory.
func NewAssistant(cfg *config.AssistProviderConfig) (port.Assistant, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown assist provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
