package draft

import "strconv"

// MatchRoomID — имя комнаты хаба для матча.
func MatchRoomID(matchID int) string {
	return "match_" + strconv.Itoa(matchID)
}
