package video

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// StreamInfo describes the first video stream of a file.
type StreamInfo struct {
	Width  int
	Height int
	// Frames is UnknownLength when the container carries no frame count.
	Frames int
	FPS    float64
}

type ffprobeOutput struct {
	Streams []struct {
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
		RFrameRate    string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe asks ffprobe for the geometry and frame count of path. When the container
// metadata lacks a frame count it falls back to counting packets, which reads the
// whole file.
func Probe(path string) (StreamInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return StreamInfo{}, fmt.Errorf("ffprobe not found: %w", err)
	}
	out, err := exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height,nb_frames,r_frame_rate", "-of", "json", path).Output()
	if err != nil {
		return StreamInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	info, err := parseProbe(out)
	if err != nil {
		return StreamInfo{}, err
	}
	if info.Frames != UnknownLength {
		return info, nil
	}
	out, err = exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0", "-count_packets",
		"-show_entries", "stream=nb_read_packets", "-of", "json", path).Output()
	if err != nil {
		return info, nil
	}
	if counted, err := parseProbe(out); err == nil {
		info.Frames = counted.Frames
	}
	return info, nil
}

// parseProbe decodes ffprobe JSON output. Missing counts become UnknownLength.
func parseProbe(data []byte) (StreamInfo, error) {
	var res ffprobeOutput
	if err := json.Unmarshal(data, &res); err != nil {
		return StreamInfo{}, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}
	if len(res.Streams) == 0 {
		return StreamInfo{}, fmt.Errorf("ffprobe: no video stream")
	}
	st := res.Streams[0]
	info := StreamInfo{Width: st.Width, Height: st.Height, Frames: UnknownLength}
	for _, s := range []string{st.NbFrames, st.NbReadPackets} {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			info.Frames = n
			break
		}
	}
	info.FPS = parseRate(st.RFrameRate)
	return info, nil
}

// parseRate turns "30000/1001" or "25" into frames per second; 0 when unparsable.
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
