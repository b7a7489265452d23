package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
)

// lowerFunc names the Unicode-aware replacement for LOWER. The built-in only
// folds ASCII letters, so accented names would never match a lowered term.
const lowerFunc = "tracker_lower"

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(lowerFunc, 1, lowerUnicode); err != nil {
		panic(fmt.Sprintf("register %s: %v", lowerFunc, err))
	}
}

func lowerUnicode(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects one argument", lowerFunc)
	}
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}
