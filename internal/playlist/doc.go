// Package playlist writes crate playlists in the extended M3U layout read by
// DJ software:
//
//	#EXTM3U
//	#EXTINF
//	/music/House/track1.mp3
//	#EXTINF
//	/music/House/track2.flac
//
// Every track gets a bare #EXTINF marker line followed by its absolute path.
package playlist
