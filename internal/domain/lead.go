package domain

import "time"

// LeadChannel enumerates inbound source channels.
type LeadChannel string

const (
	LeadChannelWhatsApp    LeadChannel = "WHATSAPP"
	LeadChannelInstagram   LeadChannel = "INSTAGRAM"
	LeadChannelFacebook    LeadChannel = "FACEBOOK"
	LeadChannelWebsiteChat LeadChannel = "WEBSITE_CHAT"
	LeadChannelEmail       LeadChannel = "EMAIL"
)

// LeadStatus enumerates lifecycle states for leads.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusLost      LeadStatus = "LOST"
)

// ActiveLeadStatuses are the non-terminal states counted as agent load.
var ActiveLeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified}

// ValidChannel reports whether the value is a known channel.
func ValidChannel(c LeadChannel) bool {
	switch c {
	case LeadChannelWhatsApp, LeadChannelInstagram, LeadChannelFacebook, LeadChannelWebsiteChat, LeadChannelEmail:
		return true
	}
	return false
}

// ValidLeadStatus reports whether the value is a known status.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is the aggregate for a prospective customer inquiry. Derived fields
// are filled by entity extraction and stay nil when nothing matched.
type Lead struct {
	ID              string
	FullName        string
	Email           *string
	Phone           *string
	Channel         LeadChannel
	RawMessage      string
	Status          LeadStatus
	Score           float64
	PropertyType    *string
	Location        *string
	Budget          *float64
	Timeline        *string
	AssignedAgentID *string
	CreatedAt       time.Time
}
