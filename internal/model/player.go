package model

type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
}

type Players struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

func (p Players) colorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.White.ID == playerID:
		return White, true
	case p.Black.ID == playerID:
		return Black, true
	}
	return "", false
}
