package autoresponse

import (
	"time"

	"peacebot/model"
)

// Clone copies src into destGuildID as a brand new record. The channel restriction is
// dropped because channel ids do not carry across guilds.
func Clone(src model.AutoResponse, destGuildID, id string, now time.Time) model.AutoResponse {
	return model.AutoResponse{
		ID:        id,
		GuildID:   destGuildID,
		Trigger:   src.Trigger,
		Response:  src.Response,
		Enabled:   src.Enabled,
		ExtraText: src.ExtraText,
		Mentions:  src.Mentions,
		CreatedBy: src.CreatedBy,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}
}
