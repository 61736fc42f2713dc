package constants

const (
	MAX_REQUEST_IDS_PER_BATCH  = 100
	MAX_CUSTOM_EMAIL_RECIPIENT = 50
	MAX_NOTES_LENGTH           = 2000
	MAX_PAGE_SIZE              = 100
	DEFAULT_REQUESTS_LIMIT     = 20
	DEFAULT_OFFSET             = uint64(0)
)
