package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusGuards(t *testing.T) {
	all := []RequestStatus{
		RequestStatusDraft,
		RequestStatusPendingManagerApproval,
		RequestStatusPendingFinalApproval,
		RequestStatusApproved,
		RequestStatusRejected,
		RequestStatusCancelledByUser,
		RequestStatusCancelledByManager,
		RequestStatusManagerChanged,
	}
	type expectation struct {
		isFinal         bool
		managerDecision bool
		finalDecision   bool
		cancelByUser    bool
		cancelByManager bool
	}
	expected := map[RequestStatus]expectation{
		RequestStatusDraft:                  {cancelByUser: true},
		RequestStatusPendingManagerApproval: {managerDecision: true, cancelByUser: true, cancelByManager: true},
		RequestStatusPendingFinalApproval:   {finalDecision: true, cancelByManager: true},
		RequestStatusApproved:               {isFinal: true},
		RequestStatusRejected:               {isFinal: true},
		RequestStatusCancelledByUser:        {isFinal: true},
		RequestStatusCancelledByManager:     {isFinal: true},
		RequestStatusManagerChanged:         {},
	}
	for _, status := range all {
		exp := expected[status]
		require.Equal(t, exp.isFinal, status.IsFinal(), "IsFinal: %v", status)
		require.Equal(t, exp.managerDecision, status.AllowManagerDecision(), "AllowManagerDecision: %v", status)
		require.Equal(t, exp.finalDecision, status.AllowFinalDecision(), "AllowFinalDecision: %v", status)
		require.Equal(t, exp.cancelByUser, status.AllowCancelByUser(), "AllowCancelByUser: %v", status)
		require.Equal(t, exp.cancelByManager, status.AllowCancelByManager(), "AllowCancelByManager: %v", status)
	}
}

func TestStatusToHuman(t *testing.T) {
	require.Equal(t, "Черновик", RequestStatusDraft.ToHuman())
	require.Equal(t, "UNKNOWN", RequestStatus("UNKNOWN").ToHuman())
}

func TestServiceLevelIsValid(t *testing.T) {
	require.True(t, ServiceLevelUser.IsValid())
	require.True(t, ServiceLevelMultipleUsers.IsValid())
	require.False(t, ServiceLevel("").IsValid())
	require.False(t, ServiceLevel("OTHER").IsValid())
}
