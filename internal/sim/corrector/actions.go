package corrector

import "github.com/tranvk/selfheal/internal/core/domain"

// remediations maps (module, error kind) to the corrective action applied for
// it. Kinds missing from a module's table fall back to GenericAction.
var remediations = map[domain.Module]map[string]string{
	domain.ModuleContentGeneration: {
		"API timeout":              "Raised request timeout and added exponential retry",
		"Invalid response format":  "Added response validation and normalization",
		"Content policy violation": "Tightened content filter with more specific rules",
	},
	domain.ModuleVideoGeneration: {
		"FFmpeg error":             "Updated FFmpeg parameters for compatibility",
		"Video processing timeout": "Optimized render pipeline with buffering",
		"Insufficient resources":   "Enabled dynamic resource management",
	},
	domain.ModuleTextToSpeech: {
		"Unsupported language":    "Added fallback voice for unsupported languages",
		"Audio generation failed": "Switched to alternate synthesis backend",
		"API rate limit":          "Added rate control with priority queues",
	},
	domain.ModuleAPIIntegration: {
		"API connection refused": "Opened circuit breaker with gradual reconnect",
		"Invalid credentials":    "Refreshed token management pipeline",
		"Rate limit exceeded":    "Enabled adaptive throttling from provider feedback",
	},
	domain.ModuleSocialMediaPosting: {
		"Authentication failed": "Enabled automatic credential renewal",
		"Post rejected":         "Added pre-publish compliance checker",
		"Media format invalid":  "Enabled automatic media format conversion",
	},
	domain.ModuleFallbackMechanisms: {
		"No fallback available": "Created new fallback path for this scenario",
		"Fallback also failed":  "Added layered fallback chain",
		"Configuration error":   "Repaired configuration and added validation",
	},
	domain.ModuleResilienceService: {
		"Service unavailable": "Enabled autonomous degraded mode",
		"Health check failed": "Tuned service health detection thresholds",
	},
}
