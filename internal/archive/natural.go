package archive

import "strings"

// naturalCompare orders strings treating runs of ASCII digits as numbers.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		da, db := digitPrefix(a), digitPrefix(b)

		if da == "" || db == "" {
			if c := strings.Compare(a[:1], b[:1]); c != 0 {
				return c
			}

			a, b = a[1:], b[1:]

			continue
		}

		na, nb := strings.TrimLeft(da, "0"), strings.TrimLeft(db, "0")
		if len(na) != len(nb) {
			return len(na) - len(nb)
		}

		if c := strings.Compare(na, nb); c != 0 {
			return c
		}

		a, b = a[len(da):], b[len(db):]
	}

	return len(a) - len(b)
}

func digitPrefix(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	return s[:end]
}
