package config

import (
	"os"
	"regexp"

	"github.com/githubnext/calcg/internal/config/rules"
	"github.com/githubnext/calcg/internal/logger"
)

// ValidationError is an alias for rules.ValidationError
type ValidationError = rules.ValidationError

// Variable expression pattern: ${VARIABLE_NAME}
var varExprPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

var logValidation = logger.New("config:validation")

// ExpandVariables replaces every ${VAR} in data with its environment value.
// All undefined variables are collected; the first one is reported.
func ExpandVariables(data []byte) ([]byte, error) {
	var undefinedVars []string

	result := varExprPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := string(match[2 : len(match)-1])
		if value, ok := os.LookupEnv(varName); ok {
			logValidation.Printf("Expanded variable: %s", varName)
			return []byte(value)
		}
		undefinedVars = append(undefinedVars, varName)
		return match
	})

	if len(undefinedVars) > 0 {
		logValidation.Printf("Variable expansion failed: undefined variables=%v", undefinedVars)
		return nil, rules.UndefinedVariable(undefinedVars[0], "configuration")
	}
	return result, nil
}

// Validate applies the semantic rules to cfg. It is also run after command-line
// overrides, which bypass the schema.
func Validate(cfg *Config) error {
	logValidation.Printf("Validating config: output=%s, precision=%d", cfg.Output, cfg.Precision)

	if err := rules.OutputFormat(cfg.Output, "output"); err != nil {
		return err
	}
	if err := rules.PrecisionRange(cfg.Precision, "precision"); err != nil {
		return err
	}
	return nil
}
