package mockmessenger

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

type Messenger struct {
	mock.Mock
}

func (m *Messenger) Send(channelID int64, embed *discordgo.MessageEmbed) (int64, error) {
	args := m.Called(channelID, embed)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Messenger) Edit(channelID, messageID int64, embed *discordgo.MessageEmbed) error {
	args := m.Called(channelID, messageID, embed)
	return args.Error(0)
}
