package fault

import "github.com/tranvk/selfheal/internal/core/domain"

// defaultProfiles holds the per-module failure probabilities and error-kind
// vocabularies. These are deliberate simplifications for resilience drills,
// not a statistical model of real failures.
var defaultProfiles = map[domain.Module]Profile{
	domain.ModuleContentGeneration: {
		FailureRate: 0.02,
		ErrorKinds: []string{
			"API timeout",
			"Invalid response format",
			"Content policy violation",
		},
	},
	domain.ModuleVideoGeneration: {
		FailureRate: 0.03,
		ErrorKinds: []string{
			"FFmpeg error",
			"Video processing timeout",
			"Insufficient resources",
		},
	},
	domain.ModuleTextToSpeech: {
		FailureRate: 0.01,
		ErrorKinds: []string{
			"Unsupported language",
			"Audio generation failed",
			"API rate limit",
		},
	},
	domain.ModuleAPIIntegration: {
		FailureRate: 0.04,
		ErrorKinds: []string{
			"API connection refused",
			"Invalid credentials",
			"Rate limit exceeded",
		},
	},
	domain.ModuleSocialMediaPosting: {
		FailureRate: 0.02,
		ErrorKinds: []string{
			"Authentication failed",
			"Post rejected",
			"Media format invalid",
		},
	},
	domain.ModuleFallbackMechanisms: {
		FailureRate: 0.01,
		ErrorKinds: []string{
			"No fallback available",
			"Fallback also failed",
			"Configuration error",
		},
	},
	domain.ModuleResilienceService: {
		FailureRate: 0.005,
		ErrorKinds: []string{
			"Service unavailable",
			"Health check failed",
		},
	},
}

// generalProfile covers whole-system runs and any unconfigured module.
var generalProfile = Profile{
	FailureRate: 0.01,
	ErrorKinds: []string{
		"System error",
		"Unknown error",
		"Resource allocation failed",
		"Unexpected behavior",
	},
}
