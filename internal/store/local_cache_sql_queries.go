// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	selectDocument = `
		SELECT body
		FROM documents
		WHERE namespace = ? AND key = ?;`

	upsertDocument = `
		INSERT INTO documents (namespace, key, body)
		VALUES (?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET body = excluded.body;`

	upsertDocumentMeta = `
		INSERT INTO document_meta (namespace, key, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET updated_at = excluded.updated_at;`

	deleteDocument = `
		DELETE FROM documents
		WHERE namespace = ? AND key = ?;`

	deleteDocumentMeta = `
		DELETE FROM document_meta
		WHERE namespace = ? AND key = ?;`

	listDocumentKeys = `
		SELECT key
		FROM documents
		WHERE namespace = ?
		ORDER BY key;`

	existsDocument = `
		SELECT EXISTS (
			SELECT 1 FROM documents WHERE namespace = ? AND key = ?
		);`

	clearDocuments = `
		DELETE FROM documents
		WHERE namespace = ?;`

	clearDocumentMeta = `
		DELETE FROM document_meta
		WHERE namespace = ?;`

	selectDocumentMeta = `
		SELECT updated_at
		FROM document_meta
		WHERE namespace = ? AND key = ?;`
)
