package validation

import "strings"

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	msg = strings.TrimPrefix(msg, "spec: ")
	msg = strings.TrimPrefix(msg, "layout: ")
	msg = strings.TrimSpace(msg)

	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func extractJSONPointer(message string) string {
	if message == "" {
		return ""
	}
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		return trimPointer(strings.TrimSpace(message[idx+4:]))
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		return trimPointer(strings.TrimSpace(message[idx:]))
	}
	return ""
}

func trimPointer(pointer string) string {
	if pointer == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(pointer, ".)];,"))
}

// fieldPathFromPointer turns "/items/0/display_text" into
// "items.0.display_text".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}
