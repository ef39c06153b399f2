package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/wbdash/internal/domain/model"
)

// listParam accepts both repeated keys and comma separated values.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// intParam parses an optional integer; absent is zero.
func intParam(q url.Values, key string) (int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, key)
	}
	return n, nil
}

func requestConfig(c Configurer, r *http.Request) (model.RequestConfig, error) {
	q := r.URL.Query()
	start, err := intParam(q, "start")
	if err != nil {
		return model.RequestConfig{}, err
	}
	end, err := intParam(q, "end")
	if err != nil {
		return model.RequestConfig{}, err
	}
	return c.RequestConfig(q.Get("lang"), start, end)
}

// tr picks the caption for locale.
func tr(locale model.Locale, ja, en string) string {
	if locale == model.LocaleJA {
		return ja
	}
	return en
}
