package config

import "fmt"

// Built-in defaults shared by the CLI and the template.
const (
	DefaultLocale   = "en"
	DefaultGenerate = 0
	DefaultSeed     = int64(0)
)

// DefaultTemplate returns the commented config written by `reportcraft config`.
func DefaultTemplate() string {
	return fmt.Sprintf(`# reportcraft configuration
# Uncomment a value to enable it. CLI flags override config values.

[preview]
# locale = %q          # BCP 47 tag used for number grouping
# generate = %d          # Synthetic rows instead of the built-in sample (0 = off)
# seed = %d              # Generator seed (0 = random)

[export]
# dir = %q

# Replace the built-in schema by listing fields. Types: number, text, date.
# [[catalog.field]]
# id = "sales_amount"
# name = "Sales Amount"
# type = "number"
`,
		DefaultLocale,
		DefaultGenerate,
		DefaultSeed,
		DefaultExportDir(),
	)
}
