package bot

import (
	"encoding/json"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"sync"
)

// userContext is one user's conversation: the running wizard, if any. The mutex
// serialises updates from the same user, which arrive on separate goroutines.
type userContext struct {
	mu              sync.Mutex
	chatID          int64
	curCommand      command
	curCommandName  string
	curCommandState []byte
}

type savedUserContext struct {
	ChatID          int64  `json:"chatID"`
	CurCommandName  string `json:"curCommandName"`
	CurCommandState []byte `json:"curCommandState"`
}

func newUserContext(chatID int64) *userContext {
	return &userContext{chatID: chatID}
}

func (u *userContext) RunCommand(command command, name string, finalKeyboard botApi.ReplyKeyboardMarkup) {
	u.setCommand(command, name, finalKeyboard)
	u.curCommand.Run()
}

func (u *userContext) ResumeCommandAfterBotRestart(command command, finalKeyboard botApi.ReplyKeyboardMarkup) {
	u.setCommand(command, u.curCommandName, finalKeyboard)
}

func (u *userContext) HasRunningCommand() bool {
	return u.curCommand != nil
}

func (u *userContext) OnUserInput(input userInput) {
	u.curCommand.OnUserInput(input)
}

func (u *userContext) Reset() {
	u.curCommand = nil
	u.curCommandName = ""
	u.curCommandState = nil
}

func (u *userContext) MarshalJSON() ([]byte, error) {

	var cmdState []byte
	if saveableCmd, ok := u.curCommand.(saveable); ok {
		var err error
		if cmdState, err = saveableCmd.SaveState(); err != nil {
			return nil, err
		}
	}

	return json.Marshal(savedUserContext{
		ChatID:          u.chatID,
		CurCommandName:  u.curCommandName,
		CurCommandState: cmdState,
	})
}

func (u *userContext) UnmarshalJSON(data []byte) error {

	var saved savedUserContext
	if err := json.Unmarshal(data, &saved); err != nil {
		return err
	}

	u.chatID = saved.ChatID
	u.curCommandName = saved.CurCommandName
	u.curCommandState = saved.CurCommandState
	return nil
}

func (u *userContext) setCommand(command command, name string, finalKeyboard botApi.ReplyKeyboardMarkup) {
	u.curCommand = command
	u.curCommandName = name
	u.curCommand.WithFinishCallback(func() {
		u.curCommand = nil
		u.curCommandName = ""
	})
	u.curCommand.WithKeyboardOnFinalMessage(finalKeyboard)
}
