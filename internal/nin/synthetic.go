package nin

// isValidSynthetic reports whether text is a synthetic number: a birth
// number whose day of month carries +80. Only the legacy boolean validator
// knew this variant. It is kept unexported until there is a confirmed
// consumer, so Detect and IsValid never report it.
func isValidSynthetic(text string) bool {
	_, ok := Create(syntheticNumber, text)
	return ok
}
