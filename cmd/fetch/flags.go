package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/fetchkit/httpclient"
)

// parseHeaders turns "Name: value" flags into a header.
func parseHeaders(raw []string) (http.Header, error) {
	h := http.Header{}
	for _, line := range raw {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: header %q must look like Name: value", errUsage, line)
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}

// parseData turns key=value flags into ordered params. With files set,
// a value of @path attaches the file at path.
func parseData(raw []string, files bool) (httpclient.Params, error) {
	var params httpclient.Params
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: data %q must look like key=value", errUsage, kv)
		}
		if files && strings.HasPrefix(value, "@") {
			path := value[1:]
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%w: read %s: %w", errUsage, path, err)
			}
			params = params.Add(key, httpclient.FileField{FileName: filepath.Base(path), Data: data})
			continue
		}
		params = params.Add(key, value)
	}
	return params, nil
}
