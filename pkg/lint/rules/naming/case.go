package naming

// isPascalCase matches CapWords names like ERC20Token or Ownable. A leading
// underscore is not allowed.
func isPascalCase(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	return onlyAlphanumeric(name)
}

// isMixedCase matches lowerCamelCase names like transferFrom. Leading
// underscores are tolerated for internal naming conventions.
func isMixedCase(name string) bool {
	trimmed := trimLeadingUnderscores(name)
	if trimmed == "" || trimmed[0] < 'a' || trimmed[0] > 'z' {
		return false
	}
	return onlyAlphanumeric(trimmed)
}

// isUpperSnakeCase matches SCREAMING_SNAKE_CASE names like MAX_SUPPLY.
func isUpperSnakeCase(name string) bool {
	trimmed := trimLeadingUnderscores(name)
	if trimmed == "" {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

func trimLeadingUnderscores(name string) string {
	i := 0
	for i < len(name) && name[i] == '_' {
		i++
	}
	return name[i:]
}

func onlyAlphanumeric(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
