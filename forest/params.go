package forest

import (
	"fmt"
	"math"
	"sort"
	"strings"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// aliases maps every accepted parameter name to its canonical name.
var aliases = map[string]string{}

// setters apply a raw map value for a canonical parameter name.
var setters = map[string]func(v interface{}) (Option, error){
	"num_trees": func(v interface{}) (Option, error) {
		n, err := toInt(v)
		return WithNumTrees(n), err
	},
	"boost": func(v interface{}) (Option, error) {
		b, err := toBool(v)
		return WithBoost(b), err
	},
	"random_state": func(v interface{}) (Option, error) {
		n, err := toInt(v)
		if err == nil && n < 0 {
			err = fmt.Errorf("must not be negative")
		}
		return WithRandomState(uint64(n)), err
	},
	"ignored_columns": func(v interface{}) (Option, error) {
		names, err := toStrings(v)
		return WithIgnoredColumns(names...), err
	},
	"continuous_columns": func(v interface{}) (Option, error) {
		names, err := toStrings(v)
		return WithContinuousColumns(names...), err
	},
	"min_subset_size_percent": func(v interface{}) (Option, error) {
		p, err := toFloat(v)
		return WithMinimumSubsetSizePercent(p), err
	},
	"validation_percent": func(v interface{}) (Option, error) {
		p, err := toFloat(v)
		return WithValidationPercent(p), err
	},
	"max_boost_rounds": func(v interface{}) (Option, error) {
		n, err := toInt(v)
		return WithMaxBoostRounds(n), err
	},
	"n_jobs": func(v interface{}) (Option, error) {
		n, err := toInt(v)
		return WithWorkers(n), err
	},
}

func init() {
	addAliases("num_trees", "n_estimators", "num_tree", "n_trees")
	addAliases("boost", "boosting")
	addAliases("random_state", "seed", "random_seed")
	addAliases("ignored_columns", "columns_to_ignore", "ignore_columns")
	addAliases("continuous_columns", "continuous_attributes", "continuous")
	addAliases("min_subset_size_percent", "minimum_subset_size_percent", "min_subset_size_percentage")
	addAliases("validation_percent", "validation_percentage")
	addAliases("max_boost_rounds", "boost_rounds")
	addAliases("n_jobs", "workers", "num_threads")
}

func addAliases(canonical string, names ...string) {
	aliases[canonical] = canonical
	for _, name := range names {
		aliases[name] = canonical
	}
}

// CanonicalName resolves a parameter name or alias.
func CanonicalName(name string) (string, bool) {
	c, ok := aliases[name]
	return c, ok
}

// ParamsFromMap converts a parameter map, as read from a config file or a
// command line, into options. Keys may be canonical names or aliases; giving
// the same parameter twice under different names is an error.
//
// Example:
//
//	opts, err := forest.ParamsFromMap(map[string]interface{}{
//	    "n_estimators": 100,
//	    "seed":         7,
//	    "boost":        true,
//	})
func ParamsFromMap(params map[string]interface{}) ([]Option, error) {
	const op = "forest.ParamsFromMap"

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	used := make(map[string]string, len(keys))
	opts := make([]Option, 0, len(keys))
	for _, key := range keys {
		canonical, ok := aliases[key]
		if !ok {
			return nil, scierrors.NewConfigurationError(op, key, "unknown parameter")
		}
		if prev, dup := used[canonical]; dup {
			return nil, scierrors.NewConfigurationError(op, key,
				fmt.Sprintf("same parameter as '%s'", prev))
		}
		used[canonical] = key

		opt, err := setters[canonical](params[key])
		if err != nil {
			return nil, scierrors.NewValidationError(key, err.Error(), params[key])
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func toInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("expected an integer")
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func toBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(x) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected a boolean")
}

func toStrings(v interface{}) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case string:
		if x == "" {
			return []string{}, nil
		}
		parts := strings.Split(x, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case []interface{}:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, expected a string", i, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of column names, got %T", v)
	}
}
