// Package publish delivers the team's schedule to its chat guild. The
// Messenger interface hides the chat platform so the controller can be
// tested with a mock.
package publish

import (
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ErrMessageDeleted is returned by Edit when the target message no
// longer exists. Callers respond by sending a fresh message.
var ErrMessageDeleted = errors.New("message no longer exists")

type Messenger interface {
	// Send posts a new embed to the channel and returns the new
	// message's id.
	Send(channelID int64, embed *discordgo.MessageEmbed) (int64, error)
	// Edit replaces the embed of an existing message.
	Edit(channelID, messageID int64, embed *discordgo.MessageEmbed) error
}

type discordMessenger struct {
	session *discordgo.Session
}

func New(session *discordgo.Session) Messenger {
	return &discordMessenger{session: session}
}

func (d *discordMessenger) Send(channelID int64, embed *discordgo.MessageEmbed) (int64, error) {
	msg, err := d.session.ChannelMessageSendEmbed(formatID(channelID), embed)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(msg.ID, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (d *discordMessenger) Edit(channelID, messageID int64, embed *discordgo.MessageEmbed) error {
	_, err := d.session.ChannelMessageEditEmbed(formatID(channelID), formatID(messageID), embed)

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return ErrMessageDeleted
	}
	return err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
