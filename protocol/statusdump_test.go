package protocol

import (
	"reflect"
	"testing"
)

func TestParseStatusDump(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "keys with noise line",
			text: "hw = rev3 #207\nbootmode = 0x01\nnoise line without equals\n",
			want: map[string]string{"hw": "rev3 #207", "bootmode": "0x01"},
		},
		{
			name: "whitespace insensitive",
			text: "prom version=0x01\n  eth0_mac   =   aa:bb:cc:dd:ee:ff  \n",
			want: map[string]string{"prom version": "0x01", "eth0_mac": "aa:bb:cc:dd:ee:ff"},
		},
		{
			name: "duplicate key last wins",
			text: "bootmode = 0x00\nbootmode = 0x01\n",
			want: map[string]string{"bootmode": "0x01"},
		},
		{
			name: "empty input",
			text: "",
			want: map[string]string{},
		},
		{
			name: "carriage returns trimmed",
			text: "hw = rev3 #207\r\nbootmode = 0x01\r\n",
			want: map[string]string{"hw": "rev3 #207", "bootmode": "0x01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStatusDump(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStatusDump() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardNumber(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		want    int
		wantErr bool
	}{
		{
			name: "hw line present",
			dump: "prom version = 0x01\nhw = rev3 #207\nbootmode = 0x01\n",
			want: 207,
		},
		{
			name:    "no hw line",
			dump:    "prom version = 0x01\nbootmode = 0x01\n",
			wantErr: true,
		},
		{
			name:    "hw line without number",
			dump:    "hw = rev3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoardNumber(tt.dump)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BoardNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}
