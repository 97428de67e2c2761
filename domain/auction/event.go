package auction

import (
	"time"

	"github.com/x-xyz/auctionhouse/domain"
)

type EventType string

const (
	EventAuctionAdded                            EventType = "AuctionAdded"
	EventAuctionStarted                          EventType = "AuctionStarted"
	EventAuctionBid                              EventType = "AuctionBid"
	EventAuctionExtended                         EventType = "AuctionExtended"
	EventAuctionSettled                          EventType = "AuctionSettled"
	EventAuctionCancelled                        EventType = "AuctionCancelled"
	EventAuctionMinBidIncrementPercentageUpdated EventType = "AuctionMinBidIncrementPercentageUpdated"
	EventAuctionDurationUpdated                  EventType = "AuctionDurationUpdated"
	EventAuctionTimeBufferUpdated                EventType = "AuctionTimeBufferUpdated"
	EventAccountApproved                         EventType = "AccountApproved"
)

// Event is one entry of the house journal. Seq is gap-free and strictly increasing,
// CallId groups the events emitted by a single call. Only the fields of the event's
// type are set; amounts are base-10 wei strings.
type Event struct {
	Seq       uint64    `json:"seq" bson:"seq"`
	Type      EventType `json:"type" bson:"type"`
	CallId    string    `json:"callId" bson:"callId"`
	Caller    string    `json:"caller,omitempty" bson:"caller,omitempty"`
	Timestamp int64     `json:"timestamp" bson:"timestamp"`
	AuctionId Id        `json:"auctionId" bson:"auctionId"`

	ContractAddress domain.Address `json:"contractAddress,omitempty" bson:"contractAddress,omitempty"`
	TokenId         domain.TokenId `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	Owner           domain.Address `json:"owner,omitempty" bson:"owner,omitempty"`
	ReservePrice    string         `json:"reservePrice,omitempty" bson:"reservePrice,omitempty"`

	StartTime int64 `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime   int64 `json:"endTime,omitempty" bson:"endTime,omitempty"`

	Bidder domain.Address `json:"bidder,omitempty" bson:"bidder,omitempty"`
	Value  string         `json:"value,omitempty" bson:"value,omitempty"`

	// AuctionSettled outcome, Winner is empty when the asset went back to its owner
	Winner domain.Address `json:"winner,omitempty" bson:"winner,omitempty"`
	Amount string         `json:"amount,omitempty" bson:"amount,omitempty"`

	// config and admission events, AuctionStarted also carries the captured percentage and time buffer
	Percentage uint8          `json:"percentage,omitempty" bson:"percentage,omitempty"`
	Seconds    int64          `json:"seconds,omitempty" bson:"seconds,omitempty"`
	Account    domain.Address `json:"account,omitempty" bson:"account,omitempty"`
}

func (e *Event) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}
