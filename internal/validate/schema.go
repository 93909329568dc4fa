// Package validate holds the per-field checks and per-operation schemas that
// every inbound payload passes through before it can touch storage. A schema
// is a rule table walked in declaration order; pruning whitelists the fields
// the schema declares and silently drops everything else.
package validate

import "fmt"

// Error names the field that failed and the violated rule.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Rule binds one field to its check. Required fields fail when absent;
// optional fields are checked only when present.
type Rule struct {
	Field    string
	Required bool
	Check    CheckFunc
}

// Schema is an ordered rule table for one operation.
type Schema struct {
	Name  string
	Rules []Rule
}

// Validate runs every rule in declaration order and returns the first
// failure. Absent means the key is missing or holds nil, matching form
// payloads where unsubmitted fields simply do not appear.
func (s Schema) Validate(data map[string]any) error {
	for _, rule := range s.Rules {
		value, present := data[rule.Field]
		if !present || value == nil {
			if rule.Required {
				return &Error{Field: rule.Field, Message: "field can't be null"}
			}
			continue
		}
		if err := rule.Check(value); err != nil {
			return &Error{Field: rule.Field, Message: err.Error()}
		}
	}
	return nil
}

// Prune validates data and, on success, returns a new map holding only the
// declared fields. Unknown fields are dropped, which is what keeps mass
// assignment of unexpected columns out of the storage layer. Returns nil
// and the validation error on failure.
func (s Schema) Prune(data map[string]any) (map[string]any, error) {
	if err := s.Validate(data); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(s.Rules))
	for _, rule := range s.Rules {
		if value, present := data[rule.Field]; present {
			out[rule.Field] = value
		}
	}
	return out, nil
}

// One schema per operation. Declaration order is the check order.
var (
	LoginForm = Schema{Name: "LoginForm", Rules: []Rule{
		{Field: "username", Required: true, Check: CheckUsername},
		{Field: "password", Required: true, Check: CheckPassword},
		{Field: "ip", Required: true, Check: CheckIP},
	}}

	SessionData = Schema{Name: "SessionData", Rules: []Rule{
		{Field: "created_at", Required: true, Check: CheckDatetime},
		{Field: "ip", Required: true, Check: CheckIP},
		{Field: "user_id", Required: true, Check: CheckID},
		{Field: "token", Required: true, Check: CheckToken},
	}}

	TokenData = Schema{Name: "TokenData", Rules: []Rule{
		{Field: "token", Required: true, Check: CheckToken},
	}}

	NewUserData = Schema{Name: "NewUserData", Rules: []Rule{
		{Field: "username", Required: true, Check: CheckUsername},
		{Field: "firstname", Required: false, Check: CheckName},
		{Field: "middlename", Required: false, Check: CheckName},
		{Field: "lastname", Required: false, Check: CheckName},
		{Field: "birthdate", Required: false, Check: CheckDate},
		{Field: "email", Required: true, Check: CheckEmail},
		{Field: "password", Required: true, Check: CheckPassword},
		{Field: "id", Required: false, Check: CheckID},
	}}

	UserData = Schema{Name: "UserData", Rules: []Rule{
		{Field: "username", Required: false, Check: CheckUsername},
		{Field: "firstname", Required: false, Check: CheckName},
		{Field: "middlename", Required: false, Check: CheckName},
		{Field: "lastname", Required: false, Check: CheckName},
		{Field: "birthdate", Required: false, Check: CheckDate},
		{Field: "email", Required: false, Check: CheckEmail},
		{Field: "password", Required: false, Check: CheckPassword},
		{Field: "id", Required: false, Check: CheckID},
	}}

	UserDeletion = Schema{Name: "UserDeletion", Rules: []Rule{
		{Field: "token", Required: true, Check: CheckToken},
		{Field: "id", Required: true, Check: CheckID},
	}}

	UserModification = Schema{Name: "UserModification", Rules: []Rule{
		{Field: "token", Required: true, Check: CheckToken},
		{Field: "firstname", Required: false, Check: CheckName},
		{Field: "middlename", Required: false, Check: CheckName},
		{Field: "lastname", Required: false, Check: CheckName},
		{Field: "birthdate", Required: false, Check: CheckDate},
		{Field: "email", Required: false, Check: CheckEmail},
		{Field: "id", Required: true, Check: CheckID},
	}}
)
