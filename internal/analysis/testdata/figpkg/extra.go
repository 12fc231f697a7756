package figpkg

import . "strings"

func shout(s string) string {
	return ToUpper(s)
}
