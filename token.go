package writeup

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// TokenKeys are the storage keys searched for an API bearer token, in order.
var TokenKeys = []string{
	"__TOKEN__",
	"token",
	"access_token",
	"accessToken",
	"jwt",
	"auth_token",
	"authToken",
	"user",
	"auth",
}

// tokenFields are the fields read from JSON-object values, in order.
var tokenFields = []string{"token", "access_token", "accessToken", "jwt"}

// LookupToken searches storage for a bearer token. For each key in
// TokenKeys the local scope is consulted before the session scope. Values
// that look like JSON objects yield their first truthy token field; if
// they do not parse, the raw value is used. Returns "" if nothing is found
// or storage is nil.
func LookupToken(ctx context.Context, storage Storage) string {
	if storage == nil {
		return ""
	}
	for _, key := range TokenKeys {
		raw := storageValue(ctx, storage, key)
		if raw == "" {
			continue
		}
		if token := tokenFromValue(raw); token != "" {
			return token
		}
	}
	return ""
}

// storageValue returns the first non-empty value for key across scopes.
func storageValue(ctx context.Context, storage Storage, key string) string {
	for _, scope := range []StorageScope{ScopeLocal, ScopeSession} {
		v, err := storage.GetItem(ctx, scope, key)
		if err == nil && v != "" {
			return v
		}
	}
	return ""
}

func tokenFromValue(raw string) string {
	if !strings.HasPrefix(raw, "{") {
		return raw
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return raw
	}
	for _, field := range tokenFields {
		if s := truthyString(obj[field]); s != "" {
			return s
		}
	}
	return ""
}

// truthyString stringifies truthy JSON scalars the way a template literal
// would. Falsy values, objects and arrays yield "".
func truthyString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

type tokenContextKey struct{}

// NewContextWithToken returns a copy of ctx carrying an API bearer token.
func NewContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token stored in ctx, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

type cookiesContextKey struct{}

// NewContextWithCookies returns a copy of ctx carrying cookies to forward
// to an API.
func NewContextWithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesContextKey{}, cookies)
}

// CookiesFromContext returns the cookies stored in ctx, or nil.
func CookiesFromContext(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesContextKey{}).([]*http.Cookie)
	return cookies
}
