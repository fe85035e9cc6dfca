package utils

// Embed colors.
const (
	ColorSuccess = 0x00FF00
	ColorError   = 0xFF0000
	ColorGeneric = 0xFFD700
	ColorAlert   = 0xFFA500
	ColorInfo    = 0x99CCFF
)
