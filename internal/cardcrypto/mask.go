package cardcrypto

// Mask returns the display form of a card number, keeping only the last four
// digits: "**** **** **** 1234". Masking is one-way and never stored in place
// of the ciphertext token.
func Mask(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "**** **** **** " + number[len(number)-4:]
}
