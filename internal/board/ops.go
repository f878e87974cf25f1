package board

// LastBoardNotice is shown instead of deleting the only remaining board
const LastBoardNotice = "You cannot delete the last board."

// Op names a category of remote operation
type Op int

const (
	OpLoadBoards Op = iota
	OpLoadBoard
	OpCreateBoard
	OpUpdateBoard
	OpDeleteBoard
	OpCreateColumn
	OpRenameColumn
	OpDeleteColumn
	OpCreateCard
	OpUpdateCard
	OpDeleteCard
	OpMoveCard
)

const checkConnection = " Check the connection to the server."

var opMessages = map[Op]string{
	OpLoadBoards:   "Could not load the boards." + checkConnection,
	OpLoadBoard:    "Could not load the board." + checkConnection,
	OpCreateBoard:  "Could not create the board." + checkConnection,
	OpUpdateBoard:  "Could not update the board." + checkConnection,
	OpDeleteBoard:  "Could not delete the board." + checkConnection,
	OpCreateColumn: "Could not create the column." + checkConnection,
	OpRenameColumn: "Could not rename the column." + checkConnection,
	OpDeleteColumn: "Could not delete the column." + checkConnection,
	OpCreateCard:   "Could not create the card." + checkConnection,
	OpUpdateCard:   "Could not update the card." + checkConnection,
	OpDeleteCard:   "Could not delete the card." + checkConnection,
	OpMoveCard:     "Could not move the card." + checkConnection,
}

var opNames = map[Op]string{
	OpLoadBoards:   "load_boards",
	OpLoadBoard:    "load_board",
	OpCreateBoard:  "create_board",
	OpUpdateBoard:  "update_board",
	OpDeleteBoard:  "delete_board",
	OpCreateColumn: "create_column",
	OpRenameColumn: "rename_column",
	OpDeleteColumn: "delete_column",
	OpCreateCard:   "create_card",
	OpUpdateCard:   "update_card",
	OpDeleteCard:   "delete_card",
	OpMoveCard:     "move_card",
}

// Message is the fixed user-facing text shown when op fails
func (o Op) Message() string {
	if m, ok := opMessages[o]; ok {
		return m
	}
	return "The operation failed." + checkConnection
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "unknown"
}
