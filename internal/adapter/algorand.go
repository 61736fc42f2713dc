package adapter

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// AlgodClient defines the algod node operations used by the ledger
//
//go:generate mockgen -source=algorand.go -destination=../mocks/algorand.go -package=mocks -mock_names=AlgodClient=MockAlgodClient
type AlgodClient interface {
	// GetApplicationByID returns an application with its global state
	GetApplicationByID(ctx context.Context, appID uint64) (models.Application, error)

	// GetApplicationBoxByName returns a single application box
	GetApplicationBoxByName(ctx context.Context, appID uint64, name []byte) (models.Box, error)

	// AccountAssetInformation returns an account's holding of an asset.
	// The node answers 404 when the account has not opted in.
	AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error)

	// SuggestedParams returns the parameters for building a transaction
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)

	// SendRawTransaction submits a signed transaction and returns its id
	SendRawTransaction(ctx context.Context, signedTxn []byte) (string, error)

	// WaitForConfirmation blocks until txID is confirmed or maxRounds have passed
	WaitForConfirmation(ctx context.Context, txID string, maxRounds uint64) (models.PendingTransactionInfoResponse, error)

	// PendingTransactionInformation returns the pool view of txID.
	// The node answers 404 once the transaction has left the pool unconfirmed.
	PendingTransactionInformation(ctx context.Context, txID string) (models.PendingTransactionInfoResponse, error)
}

// IndexerClient defines the indexer operations used by the ledger
//
//go:generate mockgen -source=algorand.go -destination=../mocks/algorand.go -package=mocks -mock_names=IndexerClient=MockIndexerClient
type IndexerClient interface {
	// SearchForApplicationBoxes returns one page of box names
	SearchForApplicationBoxes(ctx context.Context, appID uint64, limit uint64, next string) (models.BoxesResponse, error)

	// LookupApplicationBoxByIDAndName returns a single application box
	LookupApplicationBoxByIDAndName(ctx context.Context, appID uint64, name []byte) (models.Box, error)
}

// RealAlgodClient implements AlgodClient with the algod REST client
type RealAlgodClient struct {
	client *algod.Client
}

// NewAlgodClient creates an algod client for the node at url
func NewAlgodClient(url, token string) (AlgodClient, error) {
	client, err := algod.MakeClient(url, token)
	if err != nil {
		return nil, err
	}
	return &RealAlgodClient{client: client}, nil
}

func (c *RealAlgodClient) GetApplicationByID(ctx context.Context, appID uint64) (models.Application, error) {
	return c.client.GetApplicationByID(appID).Do(ctx)
}

func (c *RealAlgodClient) GetApplicationBoxByName(ctx context.Context, appID uint64, name []byte) (models.Box, error) {
	return c.client.GetApplicationBoxByName(appID, name).Do(ctx)
}

func (c *RealAlgodClient) AccountAssetInformation(ctx context.Context, address string, assetID uint64) (models.AccountAssetResponse, error) {
	return c.client.AccountAssetInformation(address, assetID).Do(ctx)
}

func (c *RealAlgodClient) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return c.client.SuggestedParams().Do(ctx)
}

func (c *RealAlgodClient) SendRawTransaction(ctx context.Context, signedTxn []byte) (string, error) {
	return c.client.SendRawTransaction(signedTxn).Do(ctx)
}

func (c *RealAlgodClient) WaitForConfirmation(ctx context.Context, txID string, maxRounds uint64) (models.PendingTransactionInfoResponse, error) {
	return transaction.WaitForConfirmation(c.client, txID, maxRounds, ctx)
}

func (c *RealAlgodClient) PendingTransactionInformation(ctx context.Context, txID string) (models.PendingTransactionInfoResponse, error) {
	info, _, err := c.client.PendingTransactionInformation(txID).Do(ctx)
	return info, err
}

// RealIndexerClient implements IndexerClient with the indexer REST client
type RealIndexerClient struct {
	client *indexer.Client
}

// NewIndexerClient creates an indexer client for the service at url
func NewIndexerClient(url, token string) (IndexerClient, error) {
	client, err := indexer.MakeClient(url, token)
	if err != nil {
		return nil, err
	}
	return &RealIndexerClient{client: client}, nil
}

func (c *RealIndexerClient) SearchForApplicationBoxes(ctx context.Context, appID uint64, limit uint64, next string) (models.BoxesResponse, error) {
	req := c.client.SearchForApplicationBoxes(appID).Limit(limit)
	if next != "" {
		req = req.Next(next)
	}
	return req.Do(ctx)
}

func (c *RealIndexerClient) LookupApplicationBoxByIDAndName(ctx context.Context, appID uint64, name []byte) (models.Box, error) {
	return c.client.LookupApplicationBoxByIDAndName(appID, name).Do(ctx)
}
