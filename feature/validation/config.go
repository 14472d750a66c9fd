package validation

import "data-reconciler/core/config"

// Config holds the defaults of validation runs.
type Config = config.ValidationConfig
