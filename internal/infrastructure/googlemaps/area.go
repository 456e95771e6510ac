package googlemaps

import (
	"regexp"
	"strings"
)

var (
	cityPattern         = regexp.MustCompile(`([^縣]+[市縣])`)
	cityDistrictPattern = regexp.MustCompile(`([^縣]+[市縣])([^市縣]+區)`)
	districtPattern     = regexp.MustCompile(`([^市縣]+區)`)

	// Special municipalities get 市, every other level-1 area gets 縣.
	municipalities = []string{"台北", "新北", "桃園", "台中", "台南", "高雄"}
)

// ExtractArea builds a "<city><district>" label from geocode results.
func ExtractArea(results []geocodeResult) (string, bool) {
	if len(results) == 0 {
		return "", false
	}

	for _, result := range results {
		if len(result.AddressComponents) == 0 {
			continue
		}

		city, district := "", ""
		for _, comp := range result.AddressComponents {
			name := comp.LongName
			if name == "" {
				name = comp.ShortName
			}
			if city == "" && hasType(comp, "administrative_area_level_1") {
				city = normalizeCity(name)
			}
			if district == "" && (hasType(comp, "administrative_area_level_2") || hasType(comp, "sublocality_level_1")) {
				district = name
			}
		}

		if city != "" && district != "" {
			return city + district, true
		}

		if district != "" && result.FormattedAddress != "" {
			if m := cityPattern.FindStringSubmatch(result.FormattedAddress); m != nil {
				return m[1] + district, true
			}
			return district, true
		}
	}

	addr := results[0].FormattedAddress
	if addr == "" {
		return "", false
	}
	if m := cityDistrictPattern.FindStringSubmatch(addr); m != nil {
		return m[1] + m[2], true
	}
	if m := districtPattern.FindStringSubmatch(addr); m != nil {
		if c := cityPattern.FindStringSubmatch(addr); c != nil {
			return c[1] + m[1], true
		}
		return m[1], true
	}
	return "", false
}

func normalizeCity(name string) string {
	if name == "" || strings.HasSuffix(name, "市") || strings.HasSuffix(name, "縣") {
		return name
	}
	for _, m := range municipalities {
		if strings.Contains(name, m) {
			return name + "市"
		}
	}
	return name + "縣"
}

func hasType(comp addressComponent, t string) bool {
	for _, ct := range comp.Types {
		if ct == t {
			return true
		}
	}
	return false
}
