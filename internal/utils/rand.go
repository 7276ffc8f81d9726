package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const idBytes = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandString 生成指定长度的 base36 随机字符串
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idBytes[rand.Intn(len(idBytes))]
	}
	return string(b)
}

// NewIdeaID allocates an idea id: millisecond timestamp plus a short random
// suffix. Collisions are negligible, not impossible; acceptable since ids
// are only minted inside one process.
func NewIdeaID() string {
	return fmt.Sprintf("idea-%d-%s", time.Now().UnixMilli(), RandString(7))
}

// NewUserID allocates a demo identity id.
func NewUserID() string {
	return fmt.Sprintf("user-%d", time.Now().UnixMilli())
}
