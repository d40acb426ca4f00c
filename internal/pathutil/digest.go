package pathutil

import (
	"crypto/md5"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Digest is a 16-byte MD5 content digest, per spec.md §3 ("content digest
// (16 bytes)"). Grounded on golang-dep/pkgtree/digest.go and
// golang-dep/internal/fs/hash.go, which hash whole subtrees with sha256;
// LazyUT hashes individual file contents with MD5 instead, since the content
// hash here exists only to detect "this exact file changed since the last
// snapshot" and the snapshot format fixes the digest width at 16 bytes.
type Digest [16]byte

// DigestFile reads path and returns the MD5 digest of its contents. The
// caller is responsible for treating a returned error as "hash invalid";
// per spec.md §4.7 the file is left unhashed and will be retried on the next
// run.
func DigestFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, errors.Wrap(err, "cannot open")
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, errors.Wrap(err, "cannot read")
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// Hex renders the digest as a 32-character lowercase hex string, matching
// FileRecord::hashHex() in original_source/lib/types/file_tree.cpp.
func (d Digest) Hex() string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, 32)
	for i, b := range d {
		buf[i*2] = hextable[b>>4]
		buf[i*2+1] = hextable[b&0x0f]
	}
	return string(buf)
}
