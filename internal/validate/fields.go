package validate

import (
	"fmt"
	"regexp"
)

// Field check rules. These patterns are shared with other consumers of the
// same records, so they must not be tightened or loosened unilaterally.
// Note the known quirks: the email pattern accepts the empty string, and the
// date/datetime patterns are prefix matches that tolerate trailing content.
var (
	usernameRe = regexp.MustCompile(`^[a-z0-9_-]{3,16}$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
	emailRe    = regexp.MustCompile(`^([a-zA-Z0-9._%-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6})*$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z]*$`)
	dateRe     = regexp.MustCompile(`\d{4}-[01]\d-[0-3]\d`)
	datetimeRe = regexp.MustCompile(`\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d`)
	tokenRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
	ipRe       = regexp.MustCompile(`^(([0-9]|[1-9][0-9]|1[0-9]{2}|2[0-4][0-9]|25[0-5])\.){3}([0-9]|[1-9][0-9]|1[0-9]{2}|2[0-4][0-9]|25[0-5])$`)
)

// CheckFunc validates a single raw field value.
type CheckFunc func(value any) error

func checkString(re *regexp.Regexp, message string) CheckFunc {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

var (
	CheckUsername = checkString(usernameRe, "username must be alphanumeric, lowercase, between 3 to 16 characters")
	CheckPassword = checkString(passwordRe, "password must be alphanumeric")
	CheckEmail    = checkString(emailRe, "invalid email")
	CheckName     = checkString(nameRe, "invalid name")
	CheckDate     = checkString(dateRe, "invalid date")
	CheckDatetime = checkString(datetimeRe, "invalid datetime")
	CheckToken    = checkString(tokenRe, "invalid token")
	CheckIP       = checkString(ipRe, "only IPv4 is supported")
)

// CheckID accepts integers strictly greater than zero. Strings are rejected
// even when they spell a number.
func CheckID(value any) error {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return fmt.Errorf("id must be an integer")
	}
	if n <= 0 {
		return fmt.Errorf("id must be a positive integer")
	}
	return nil
}
