package adapter

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// BuildURL composes the final request URL: params are appended as a
// query string, then BaseURL is prefixed when the result is not absolute.
func BuildURL(cfg *Config) string {
	u := cfg.URL
	if q := formatParams(cfg.Params); q != "" {
		if strings.Contains(u, "?") {
			u += "&" + q
		} else {
			u += "?" + q
		}
	}
	if !isAbsolute(u) {
		u = cfg.BaseURL + u
	}
	return u
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http:") ||
		strings.HasPrefix(u, "https:") ||
		strings.HasPrefix(u, "//")
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, encodeComponent(k)+"="+encodeComponent(paramString(params[k])))
	}
	return strings.Join(pairs, "&")
}

// paramString renders a query value. Slices and arrays are joined with ",".
func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = paramString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// componentReplacer rewrites QueryEscape output to URI component form:
// spaces become %20 and !'()* stay literal.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}
