package domain

// Module identifies a subsystem subject to independent fault injection.
type Module string

const (
	// Known subsystem modules
	ModuleContentGeneration  Module = "content_generation"
	ModuleVideoGeneration    Module = "video_generation"
	ModuleTextToSpeech       Module = "text_to_speech"
	ModuleAPIIntegration     Module = "api_integration"
	ModuleSocialMediaPosting Module = "social_media_posting"
	ModuleFallbackMechanisms Module = "fallback_mechanisms"
	ModuleResilienceService  Module = "resilience_service"

	// ModuleGeneral represents a whole-system (unscoped) run.
	ModuleGeneral Module = "general"
)

// Modules lists the known subsystem modules, in sweep order.
// ModuleGeneral is deliberately excluded; general sweeps run separately.
var Modules = []Module{
	ModuleContentGeneration,
	ModuleVideoGeneration,
	ModuleTextToSpeech,
	ModuleAPIIntegration,
	ModuleSocialMediaPosting,
	ModuleFallbackMechanisms,
	ModuleResilienceService,
}

var knownModules = func() map[Module]bool {
	m := make(map[Module]bool, len(Modules))
	for _, mod := range Modules {
		m[mod] = true
	}
	return m
}()

// IsKnown reports whether m is one of the fixed subsystem modules.
func IsKnown(m Module) bool {
	return knownModules[m]
}

// Normalize maps a module name onto the closed module set.
// Unrecognized or empty names fall back to ModuleGeneral.
func Normalize(name string) Module {
	m := Module(name)
	if name == "" || m == ModuleGeneral {
		return ModuleGeneral
	}
	if IsKnown(m) {
		return m
	}
	return ModuleGeneral
}
