package cart

// GuestLine adalah item cart yang disimpan di sisi client untuk guest.
// Tidak punya snapshot dan tidak pernah dianggap sebagai Cart server sampai
// lolos merge.
type GuestLine struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// FilterValid buang entry yang tidak lengkap (productId/size kosong atau
// quantity <= 0). Entry jelek di-skip, bukan bikin merge gagal.
func FilterValid(lines []GuestLine) []GuestLine {
	out := make([]GuestLine, 0, len(lines))
	for _, gl := range lines {
		if gl.ProductID == "" || gl.Size == "" || gl.Quantity <= 0 {
			continue
		}
		out = append(out, gl)
	}
	return out
}
