// Package ident converts WIT kebab-case identifiers to and from the
// camel-case spellings JavaScript code expects (spec §3 "Naming conventions").
package ident

import "strings"

// ToLowerCamel converts a kebab-case WIT function or record-field name
// ("safe-div") to lowerCamelCase ("safeDiv"), the spelling used for
// JavaScript function and record-field identifiers.
func ToLowerCamel(kebab string) string {
	return toCamel(kebab, false)
}

// ToUpperCamel converts a kebab-case WIT type, enum-case, or flag name
// ("my-enum", "red-blue") to UpperCamelCase ("MyEnum", "RedBlue"), the
// spelling used for JavaScript object keys on enum/flags namespaces.
func ToUpperCamel(kebab string) string {
	return toCamel(kebab, true)
}

func toCamel(kebab string, upperFirst bool) string {
	if kebab == "" {
		return ""
	}
	parts := strings.Split(kebab, "-")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !upperFirst {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Equal reports whether two kebab-case identifiers name the same WIT item,
// ignoring case the way WIT identifier comparison does.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
