package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io/ipfs/"
	IPFS_URI_SCHEME      = "ipfs://"

	// Ledger constants
	DEFAULT_ALGOD_URL   = "https://testnet-api.algonode.cloud"
	DEFAULT_INDEXER_URL = "https://testnet-idx.algonode.cloud"

	// TICKET_TRANSFER_AMOUNT is the number of asset units handed to an approved attendee
	TICKET_TRANSFER_AMOUNT uint64 = 1

	// DEFAULT_CONFIRMATION_ROUNDS bounds how long an approval waits for a transfer to land
	DEFAULT_CONFIRMATION_ROUNDS uint64 = 4

	// ASSET_ID_GLOBAL_KEY is the ticket application's global state key holding the ticket asset id
	ASSET_ID_GLOBAL_KEY = "assetID"

	// REGISTRANT_BOX_NAME_LENGTH is the length of a box name that is a raw account public key
	REGISTRANT_BOX_NAME_LENGTH = 32
)
