package transform

// UserTransformer exposes an account as {id, name, email}.
// Credentials stored on the record are never copied out.
type UserTransformer struct{}

func (UserTransformer) Transform(rec Record) (Shape, error) {
	id, err := rec.String("id")
	if err != nil {
		return Shape{}, err
	}
	name, err := rec.String("name")
	if err != nil {
		return Shape{}, err
	}
	email, err := rec.String("email")
	if err != nil {
		return Shape{}, err
	}

	var s Shape
	s.Set("id", id)
	s.Set("name", name)
	s.Set("email", email)
	return s, nil
}

var _ Transformer = UserTransformer{}
