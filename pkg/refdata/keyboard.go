package refdata

// KeyboardLayout is a physical key grid. Row offsets approximate the
// stagger of real keyboards so diagonal adjacency lines up.
type KeyboardLayout struct {
	Name string
	Rows []string
}

// KeyboardLayouts returns the static layout tables used by the
// keyboard-walk detector. This table has no refresh sources.
func KeyboardLayouts() []KeyboardLayout {
	return keyboardLayouts
}

var keyboardLayouts = []KeyboardLayout{
	{Name: "qwerty", Rows: []string{
		"1234567890",
		"qwertyuiop",
		"asdfghjkl",
		"zxcvbnm",
	}},
	{Name: "azerty", Rows: []string{
		"1234567890",
		"azertyuiop",
		"qsdfghjklm",
		"wxcvbn",
	}},
	{Name: "qwertz", Rows: []string{
		"1234567890",
		"qwertzuiop",
		"asdfghjkl",
		"yxcvbnm",
	}},
	{Name: "dvorak", Rows: []string{
		"1234567890",
		"pyfgcrl",
		"aoeuidhtns",
		"qjkxbmwvz",
	}},
	{Name: "colemak", Rows: []string{
		"1234567890",
		"qwfpgjluy",
		"arstdhneio",
		"zxcvbkm",
	}},
	{Name: "numpad", Rows: []string{
		"789",
		"456",
		"123",
		"0",
	}},
}
