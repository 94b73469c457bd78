package config

// FormatInspectionID formats an inspection identifier based on the given
// format. Falls back to the ID if name is empty.
func FormatInspectionID(format InspectionFormat, id, name string) string {
	if name == "" {
		return id
	}

	switch format {
	case InspectionFormatID:
		return id
	case InspectionFormatCombined:
		return id + "/" + name
	case InspectionFormatName:
		return name
	default:
		return name
	}
}
