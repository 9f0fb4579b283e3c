package themes

// Dark is the default theme: muted lavender bars on a deep navy card.
func Dark() Theme {
	t := Base()
	t.WaveColor = Color("#8888aa")
	t.ProgressColor = Color("#6c63ff")
	t.CursorColor = "#6c63ff"
	t.BarWidth = 2
	t.BarGap = 1
	t.BarRadius = 2
	t.Height = 80
	t.Background = "#1a1a2e"
	t.Border = "1px solid rgba(255, 255, 255, 0.08)"
	t.TitleColor = "rgba(255, 255, 255, 0.85)"
	t.PlayButtonStyle = "circle"
	t.PlayButtonColor = "#ffffff"
	t.PlayButtonBg = "rgba(108, 99, 255, 0.25)"
	t.TimeColor = "rgba(255, 255, 255, 0.4)"
	return t
}

// Light suits light notebook backgrounds.
func Light() Theme {
	t := Base()
	t.WaveColor = Color("#555577")
	t.ProgressColor = Color("#4a56e2")
	t.CursorColor = "#4a56e2"
	t.BarWidth = 2
	t.BarGap = 1
	t.BarRadius = 2
	t.Height = 80
	t.Background = "#f8f8fc"
	t.Border = "1px solid rgba(0, 0, 0, 0.08)"
	t.TitleColor = "rgba(0, 0, 0, 0.8)"
	t.PlayButtonStyle = "circle"
	t.PlayButtonColor = "#333333"
	t.PlayButtonBg = "rgba(74, 86, 226, 0.12)"
	t.TimeColor = "rgba(0, 0, 0, 0.45)"
	return t
}
