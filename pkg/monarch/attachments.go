package monarch

import (
	"context"

	"github.com/erikrubstein/monarch-api/pkg/graphql"
)

// Attachment uploads are a two-step dance: ask the service for upload
// info (a presigned destination plus a public id), push the bytes there
// out of band, then register the public id against the transaction.

const attachmentUploadInfoDocument = `query Common_GetTransactionAttachmentUploadInfo($transactionId: UUID!) {
  transactionAttachmentUploadInfo(transactionId: $transactionId) {
    uploadUrl
    publicId
    fields
    __typename
  }
}`

const addAttachmentDocument = `mutation Common_AddTransactionAttachment($input: AddTransactionAttachmentInput!) {
  addTransactionAttachment(input: $input) {
    attachment {
      id
      publicId
      extension
      sizeBytes
      filename
      originalAssetUrl
      __typename
    }
    errors {
      message
      __typename
    }
    __typename
  }
}`

const getAttachmentDocument = `query Mobile_GetAttachmentDetails($attachmentId: UUID!) {
  attachment(id: $attachmentId) {
    id
    publicId
    extension
    sizeBytes
    filename
    originalAssetUrl
    transaction {
      id
      __typename
    }
    __typename
  }
}`

const deleteAttachmentWebDocument = `mutation Web_TransactionDrawerDeleteAttachment($id: UUID!) {
  deleteTransactionAttachment(id: $id) {
    deleted
    __typename
  }
}`

const deleteAttachmentMobileDocument = `mutation Mobile_DeleteAttachment($attachmentId: UUID!) {
  deleteAttachment(attachmentId: $attachmentId) {
    deleted
    errors {
      message
      __typename
    }
    __typename
  }
}`

// GetTransactionAttachmentUploadInfo returns the upload destination for a
// new attachment on the given transaction.
func (c *Client) GetTransactionAttachmentUploadInfo(ctx context.Context, transactionID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_GetTransactionAttachmentUploadInfo",
		Document:  attachmentUploadInfoDocument,
		Variables: map[string]any{"transactionId": transactionID},
	})
}

// AddTransactionAttachment registers an uploaded file with a transaction.
// input uses the service's field names, at minimum "transactionId" and the
// "publicId" returned by the upload info call.
func (c *Client) AddTransactionAttachment(ctx context.Context, input map[string]any) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Common_AddTransactionAttachment",
		Document:  addAttachmentDocument,
		Variables: map[string]any{"input": input},
	})
}

func (c *Client) GetTransactionAttachment(ctx context.Context, attachmentID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Mobile_GetAttachmentDetails",
		Document:  getAttachmentDocument,
		Variables: map[string]any{"attachmentId": attachmentID},
	})
}

func (c *Client) DeleteTransactionAttachmentWeb(ctx context.Context, attachmentID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Web_TransactionDrawerDeleteAttachment",
		Document:  deleteAttachmentWebDocument,
		Variables: map[string]any{"id": attachmentID},
	})
}

func (c *Client) DeleteTransactionAttachmentMobile(ctx context.Context, attachmentID string) (map[string]any, error) {
	return c.exec.Execute(ctx, graphql.Operation{
		Name:      "Mobile_DeleteAttachment",
		Document:  deleteAttachmentMobileDocument,
		Variables: map[string]any{"attachmentId": attachmentID},
	})
}
