package transform

// LessonTransformer exposes a lesson as {title, content, is_free}.
type LessonTransformer struct{}

// Transform renames body to content and coerces free to a strict boolean.
// Any other field on the record is dropped.
func (LessonTransformer) Transform(rec Record) (Shape, error) {
	title, err := rec.String("title")
	if err != nil {
		return Shape{}, err
	}
	body, err := rec.String("body")
	if err != nil {
		return Shape{}, err
	}
	free, err := rec.Bool("free")
	if err != nil {
		return Shape{}, err
	}

	var s Shape
	s.Set("title", title)
	s.Set("content", body)
	s.Set("is_free", free)
	return s, nil
}

var _ Transformer = LessonTransformer{}
