// Package session turns user commands into playlist operations.
//
// A Session owns a playlist.List, the store it saves to and the optional
// exporter and importer. Front ends build a Request, call Execute and show
// the Result; the session itself never reads or prints anything.
//
//	s := session.New(playlist.New(), store.NewLocal("."))
//	res := s.Execute(ctx, session.Request{
//	    Command:  session.CmdAdd,
//	    Track:    model.NewTrack("A", "X", 100),
//	    Position: playlist.AppendPosition,
//	})
//	session.WriteResult(os.Stdout, res)
//
// "Not found", "empty" and "invalid position" outcomes come back with
// StatusInfo. Storage errors come back with StatusFailed. Neither ends the
// session; only CmdExit sets Result.Exit.
package session
