package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxNonce is used for prefixing nonce redis key
	PfxNonce = "nonce"
	// PfxBids is used for prefixing the cached last bids of an auction
	PfxBids = "bids"
	// PfxAuction is used for prefixing cached mirror auctions
	PfxAuction = "auction"

	// ChannelJournal is the pub/sub channel announcing committed journal seqs
	ChannelJournal = "auctionhouse:journal"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first two components of a redis key, used as a metric tag
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
