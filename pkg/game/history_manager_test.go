package game

import (
	"fmt"
	"testing"
	"time"
)

func testRecord(i int) DetectionRecord {
	return DetectionRecord{
		ID:       fmt.Sprintf("det-%d", i),
		FileName: fmt.Sprintf("site_%d.jpg", i),
		Date:     time.Date(2024, 5, 1, 12, i, 0, 0, time.UTC),
		Detections: []DetectedObject{
			{Class: "helmet", Confidence: 0.9, Box: []float64{1, 2, 3, 4}},
			{Class: "vest", Confidence: 0.7, Box: []float64{5, 6, 7, 8}},
		},
		ClassCounts: map[string]int{"helmet": 1, "vest": 1},
	}
}

// TestHistoryManager_NewestFirstCapped 测试最新在前且最多 10 条
func TestHistoryManager_NewestFirstCapped(t *testing.T) {
	hm := NewHistoryManager(nil)
	for i := 0; i < 15; i++ {
		if err := hm.Add(testRecord(i)); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
	}

	entries := hm.Entries()
	if len(entries) != MaxHistoryEntries {
		t.Fatalf("Len = %d, want %d", len(entries), MaxHistoryEntries)
	}
	if entries[0].ID != "det-14" || entries[9].ID != "det-5" {
		t.Errorf("order = %s..%s, want det-14..det-5", entries[0].ID, entries[9].ID)
	}
}

// TestHistoryManager_RemoveAndRestore 测试删除与撤销
func TestHistoryManager_RemoveAndRestore(t *testing.T) {
	hm := NewHistoryManager(nil)
	for i := 0; i < 3; i++ {
		hm.Add(testRecord(i))
	}

	rec, ok, err := hm.Remove("det-1")
	if err != nil || !ok || rec.ID != "det-1" {
		t.Fatalf("Remove() = %v, %v, %v", rec.ID, ok, err)
	}
	if hm.Len() != 2 {
		t.Errorf("Len after Remove = %d, want 2", hm.Len())
	}
	if _, ok, _ := hm.Remove("missing"); ok {
		t.Error("Remove(missing) reported success")
	}

	hm.Restore(rec)
	entries := hm.Entries()
	want := []string{"det-2", "det-1", "det-0"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].ID, id)
		}
	}
}

// TestHistoryManager_ClearAndUndo 测试清空与撤销清空
func TestHistoryManager_ClearAndUndo(t *testing.T) {
	hm := NewHistoryManager(nil)
	for i := 0; i < 4; i++ {
		hm.Add(testRecord(i))
	}

	removed, err := hm.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if len(removed) != 4 || hm.Len() != 0 {
		t.Fatalf("Clear removed %d, left %d", len(removed), hm.Len())
	}

	hm.Restore(removed...)
	if hm.Len() != 4 || hm.Entries()[0].ID != "det-3" {
		t.Errorf("restore failed: len=%d first=%s", hm.Len(), hm.Entries()[0].ID)
	}
}

// TestHistoryManager_Persistence 测试 gdata 持久化
func TestHistoryManager_Persistence(t *testing.T) {
	m := openTestGdata(t, "test_aurafx_history")

	hm1 := NewHistoryManager(m)
	hm1.Add(testRecord(1))
	hm1.Add(testRecord(2))

	hm2 := NewHistoryManager(m)
	entries := hm2.Entries()
	if len(entries) != 2 {
		t.Fatalf("reloaded %d records, want 2", len(entries))
	}
	got := entries[0]
	if got.ID != "det-2" || got.FileName != "site_2.jpg" || got.TotalObjects() != 2 {
		t.Errorf("reloaded record = %+v", got)
	}
	if len(got.Detections) != 2 || got.Detections[1].Class != "vest" {
		t.Errorf("detections not persisted: %+v", got.Detections)
	}

	hm2.Clear()
	if hm3 := NewHistoryManager(m); hm3.Len() != 0 {
		t.Errorf("cleared history reloaded %d records", hm3.Len())
	}
}

// TestDetectionRecord_Stats 测试统计辅助方法
func TestDetectionRecord_Stats(t *testing.T) {
	rec := testRecord(0)
	if rec.TotalObjects() != 2 {
		t.Errorf("TotalObjects() = %d, want 2", rec.TotalObjects())
	}
	if avg := rec.AverageConfidence(); avg < 0.7999 || avg > 0.8001 {
		t.Errorf("AverageConfidence() = %v, want 0.8", avg)
	}
	if (DetectionRecord{}).AverageConfidence() != 0 {
		t.Error("empty record average should be 0")
	}
}
