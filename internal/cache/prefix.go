package cache

import "fmt"

type Prefix string

const (
	Lessons        Prefix = "lessons"
	TokenBlacklist Prefix = "tokens:blacklist"
)

func (p Prefix) Key(id any) string {
	return fmt.Sprintf("%s:%v", p, id)
}
