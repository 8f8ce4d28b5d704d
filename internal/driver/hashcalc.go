package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"

	"pl0lex/internal/lexer"
)

// Digest is a SHA-256 value.
type Digest [sha256.Size]byte

// combineDigest: H(content || part1 || part2 ...). Порядок частей значим.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey связывает содержимое файла с опциями, влияющими на результат.
// Имя файла в ключ не входит: одинаковые файлы делят запись.
func cacheKey(content Digest, opts lexer.Options) Digest {
	opts = opts.WithDefaults()
	var buf [1 + 8 + 8 + 2]byte
	buf[0] = byte(opts.Mode)
	binary.LittleEndian.PutUint64(buf[1:], toUint64(opts.MaxIdentLength))
	binary.LittleEndian.PutUint64(buf[9:], toUint64(opts.MaxNumber))
	binary.LittleEndian.PutUint16(buf[17:], diskCacheSchemaVersion)
	return combineDigest(content, buf[:])
}

func toUint64[T int | int64](v T) uint64 {
	out, err := safecast.Conv[uint64](v)
	if err != nil {
		panic(fmt.Errorf("cache key: %w", err))
	}
	return out
}
