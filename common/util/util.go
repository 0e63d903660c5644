package util

import "strings"

func Set[T any](i any, target *T) {
	if v, ok := i.(T); ok {
		*target = v
	}
}

// MaskEmail hides the local part of a public submitter's address so staff
// exports don't leak it wholesale: "someone@example.org" -> "s*****e@example.org".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}
	local := email[:at]
	if len(local) <= 2 {
		return strings.Repeat("*", len(local)) + email[at:]
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + email[at:]
}

func Convert[S any, T any](source []S, f func(s S) T) []T {
	result := make([]T, len(source))
	for i, s := range source {
		result[i] = f(s)
	}
	return result
}
