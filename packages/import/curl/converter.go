// Package curl converts curl command lines into saved requests.
package curl

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

// Convert parses a curl command and builds a saved request from it.
// Supported flags: -X/--request, -H/--header, -d/--data variants,
// -u/--user, -L/--location, -A/--user-agent, -e/--referer,
// -b/--cookie. Unknown flags are skipped.
func Convert(curlCmd string) (*collection.SavedRequest, error) {
	curlCmd = strings.TrimSpace(curlCmd)

	if strings.HasPrefix(curlCmd, "curl ") {
		curlCmd = strings.TrimPrefix(curlCmd, "curl ")
	} else if curlCmd == "curl" || curlCmd == "" {
		return nil, fmt.Errorf("no URL specified")
	}

	tokens := tokenize(curlCmd)

	method := "GET"
	methodSet := false
	var rawURL string
	var headers []request.Header
	var body string
	var basicAuth string
	followRedirects := false

	i := 0
	for i < len(tokens) {
		token := tokens[i]

		switch {
		case token == "-X" || token == "--request":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			method = strings.ToUpper(value)
			methodSet = true
			i += 2

		case token == "-H" || token == "--header":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			key, val, found := strings.Cut(value, ":")
			if found {
				headers = append(headers, request.Header{
					Key:   strings.TrimSpace(key),
					Value: strings.TrimSpace(val),
				})
			}
			i += 2

		case token == "-d" || token == "--data" || token == "--data-raw" || token == "--data-binary":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			body = value
			if !methodSet {
				method = "POST"
			}
			i += 2

		case token == "-u" || token == "--user":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			basicAuth = value
			i += 2

		case token == "-L" || token == "--location":
			followRedirects = true
			i++

		case token == "-A" || token == "--user-agent":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			headers = append(headers, request.Header{Key: "User-Agent", Value: value})
			i += 2

		case token == "-e" || token == "--referer":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			headers = append(headers, request.Header{Key: "Referer", Value: value})
			i += 2

		case token == "-b" || token == "--cookie":
			value, err := flagValue(tokens, i, token)
			if err != nil {
				return nil, err
			}
			headers = append(headers, request.Header{Key: "Cookie", Value: value})
			i += 2

		case strings.HasPrefix(token, "-"):
			// Skip unknown flags along with their value, if any.
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") && !isURL(tokens[i+1]) {
				i += 2
			} else {
				i++
			}

		default:
			if rawURL == "" && isURL(token) {
				rawURL = token
			}
			i++
		}
	}

	if rawURL == "" {
		return nil, fmt.Errorf("no URL found in curl command")
	}

	req := request.New(method, rawURL)
	req.Headers = headers
	req.FollowRedirects = followRedirects
	if body != "" {
		req.SetBody(body)
	}
	if basicAuth != "" {
		if _, ok := req.Header("Authorization"); !ok {
			req.AddHeader("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(basicAuth)))
		}
	}

	return collection.NewSavedRequest(generateName(rawURL, method), req), nil
}

func flagValue(tokens []string, i int, flag string) (string, error) {
	if i+1 >= len(tokens) {
		return "", fmt.Errorf("missing value for %s", flag)
	}
	return tokens[i+1], nil
}

// tokenize splits a curl command into tokens, respecting quotes.
func tokenize(cmd string) []string {
	var tokens []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	escaped := false

	for _, r := range cmd {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch r {
		case '\\':
			escaped = true
		case '\'':
			if !inDoubleQuote {
				inSingleQuote = !inSingleQuote
			} else {
				current.WriteRune(r)
			}
		case '"':
			if !inSingleQuote {
				inDoubleQuote = !inDoubleQuote
			} else {
				current.WriteRune(r)
			}
		case ' ', '\t', '\n':
			if inSingleQuote || inDoubleQuote {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isURL checks if a string looks like a URL or a templated one.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "{{")
}

var urlPathPattern = regexp.MustCompile(`https?://[^/]+(/[^?#]*)?`)

// generateName derives a request name from the URL path and method,
// e.g. "get_users_42" for GET https://api.example.com/users/42.
func generateName(url, method string) string {
	matches := urlPathPattern.FindStringSubmatch(url)

	path := "/"
	if len(matches) > 1 && matches[1] != "" {
		path = matches[1]
	}

	path = strings.Trim(path, "/")
	if path == "" {
		path = "root"
	}

	path = strings.ReplaceAll(path, "/", "_")
	path = strings.ReplaceAll(path, "-", "_")

	return strings.ToLower(method) + "_" + path
}
