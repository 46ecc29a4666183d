package view

// DetailFooter renders the footer for the program detail modal.
func DetailFooter(styles ModalStyles) string {
	return RenderKeyButtons(styles, true, KeyButton{"Esc", "Close"}, KeyButton{"y", "Copy"})
}

// JumpFooter renders the footer for the jump menu.
func JumpFooter(styles ModalStyles) string {
	return RenderKeyButtons(styles, true,
		KeyButton{"Enter", "Jump"}, KeyButton{"n", "Now"}, KeyButton{"Esc", "Cancel"})
}

// InitFooter renders the footer for the init modal.
func InitFooter(styles ModalStyles) string {
	return RenderKeyButtons(styles, false, KeyButton{"Enter", "Allow"}, KeyButton{"Esc", "Quit"})
}
