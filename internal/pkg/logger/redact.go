package logger

// RedactPhone masks a phone number for safe logging, keeping the last two
// digits. "+15551234567" → "+*********67". Numbers too short to carry real
// information are fully masked.
func RedactPhone(phone string) string {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 4 {
		return "***"
	}

	out := []rune(phone)
	remaining := digits - 2 // leave last two digits visible
	for i, r := range out {
		if r >= '0' && r <= '9' && remaining > 0 {
			out[i] = '*'
			remaining--
		}
	}
	return string(out)
}
