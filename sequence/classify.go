package sequence

import "regexp"

// Stage names are free text from the stage table; classification keys off
// operator naming conventions rather than a dedicated column.
var (
	operationalRe = regexp.MustCompile(`(?i)\b(critical|ramp|stage[-_ ]?6|s6)\b`)
	criticalRe    = regexp.MustCompile(`(?i)\bcritical\b`)
)

// IsOperationalStage reports whether the named stage belongs to the
// operational phase, during which pre-ballast-only tanks are frozen.
func IsOperationalStage(name string) bool {
	return operationalRe.MatchString(name)
}

// IsCriticalStage reports whether the named stage is a critical gate
// checkpoint; only critical stages receive probable-cause diagnostics.
func IsCriticalStage(name string) bool {
	return criticalRe.MatchString(name)
}
