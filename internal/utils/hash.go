// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"
)

// hasherPool keeps SHA-1 states around; the file server hashes every
// body it stores or serves.
var hasherPool = sync.Pool{
	New: func() any {
		return sha1.New()
	},
}

// BlobSHA returns the git blob object id of content: the hex SHA-1 of
// "blob <len>\x00" followed by the bytes. The development file server uses
// it as the revision token, which makes tokens identical to the ones a git
// host reports for the same content.
func BlobSHA(content []byte) string {
	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)

	return hex.EncodeToString(h.Sum(nil))
}
